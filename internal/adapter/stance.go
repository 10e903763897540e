package adapter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/store"
)

// BuildLegalStance fans out up to three retrievals for the same query
// (spec §4.8): statutes always, case law and preparatory works only
// when requested. golang.org/x/sync/errgroup runs them concurrently
// since each is an independent read against the Store.
func (a *German) BuildLegalStance(ctx context.Context, req StanceRequest) (StanceResult, error) {
	var statutes, caseLaw, prepWorks []models.Document

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := a.SearchDocuments(req.Query, req.Limit)
		if err != nil {
			return err
		}
		statutes = res.Documents
		return nil
	})
	if req.IncludeCaseLaw {
		g.Go(func() error {
			res, err := a.SearchCaseLaw(req.Query, req.Limit, store.CaseLawFilters{})
			if err != nil {
				return err
			}
			caseLaw = res.Documents
			return nil
		})
	}
	if req.IncludePreparatoryWorks {
		g.Go(func() error {
			res, err := a.GetPreparatoryWorks(store.PrepHints{Query: req.Query}, req.Limit)
			if err != nil {
				return err
			}
			prepWorks = res.Documents
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return StanceResult{}, err
	}

	ceiling := 2 * req.Limit
	if ceiling <= 0 {
		ceiling = 40
	}
	keyCitations := unionCitations(ceiling, statutes, caseLaw, prepWorks)

	return StanceResult{
		Query:            req.Query,
		Statutes:         statutes,
		CaseLaw:          caseLaw,
		PreparatoryWorks: prepWorks,
		KeyCitations:     keyCitations,
	}, nil
}

// unionCitations builds the deduplicated, order-preserving union of
// every document list's citation, truncated to max.
func unionCitations(max int, lists ...[]models.Document) []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range lists {
		for _, d := range list {
			if d.Citation == "" || seen[d.Citation] {
				continue
			}
			seen[d.Citation] = true
			out = append(out, d.Citation)
			if len(out) >= max {
				return out
			}
		}
	}
	return out
}
