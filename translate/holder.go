package translate

import (
	"context"
	"strconv"
)

// Holder is anything that carries a translatable string: an MText, a
// single-line text, a block attribute, a multileader, a line in a dump file.
type Holder interface {
	// Text returns the current contents; false when there is none.
	Text() (string, bool)
	SetText(string)
}

// TranslateHolders translates every holder that has text and writes back
// the results that changed.
func TranslateHolders(ctx context.Context, tr *Translator, holders []Holder, sl, tl string) Summary {
	jobs := make([]Job, 0, len(holders))
	owners := make([]Holder, 0, len(holders))
	for i, h := range holders {
		text, ok := h.Text()
		if !ok {
			continue
		}
		jobs = append(jobs, Job{ID: strconv.Itoa(i), Text: text, SourceLang: sl, TargetLang: tl})
		owners = append(owners, h)
	}

	results := tr.TranslateBatch(ctx, jobs)
	for i, r := range results {
		if r.Changed && r.Err == nil {
			owners[i].SetText(r.Text)
		}
	}
	return Summarize(results)
}
