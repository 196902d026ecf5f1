package pmf

import (
	pmferrors "pmfkit/internal/errors"
	"pmfkit/pkg/contracts/domain"
)

// carbonEquivalence maps organic tracer species to their carbon mass
// fraction, used to fold tracers back into an OC estimate.
var carbonEquivalence = map[string]float64{
	"Oxalate":         0.27,
	"Arabitol":        0.40,
	"Mannitol":        0.40,
	"Sorbitol":        0.40,
	"Polyols":         0.40,
	"Levoglucosan":    0.44,
	"Mannosan":        0.44,
	"Galactosan":      0.44,
	"MSA":             0.12,
	"Glucose":         0.44,
	"Cellulose":       0.44,
	"Maleic":          0.41,
	"Succinic":        0.41,
	"Citraconic":      0.46,
	"Glutaric":        0.45,
	"Oxoheptanedioic": 0.48,
	"MethylSuccinic":  0.53,
	"Adipic":          0.49,
	"Methylglutaric":  0.49,
	"3-MBTCA":         0.47,
	"Phtalic":         0.58,
	"Pinic":           0.58,
	"Suberic":         0.55,
	"Azelaic":         0.57,
	"Sebacic":         0.59,
}

// ReplaceTotalVariable renames the total variable across every cached
// table and the metadata. Tables not read yet are unaffected; they carry
// the original label when read later, so callers should rename after
// loading everything they need.
func (r *Run) ReplaceTotalVariable(newName string) error {
	meta, err := r.Metadata()
	if err != nil {
		return err
	}
	if meta.TotalVariable == "" {
		return pmferrors.Ambiguous(r.Site, "no total variable to replace")
	}
	old := meta.TotalVariable

	for _, table := range []*domain.ProfileTable{r.profilesB, r.profilesC} {
		if table != nil {
			renameAll(table.Species, map[string]string{old: newName})
		}
	}
	for _, table := range []*domain.BootstrapReplicateTable{r.bootB, r.bootC} {
		if table != nil {
			renameAll(table.Species, map[string]string{old: newName})
		}
	}
	for _, table := range []*domain.UncertaintySummaryTable{r.uncB, r.uncC} {
		if table == nil {
			continue
		}
		for i := range table.Rows {
			if table.Rows[i].Specie == old {
				table.Rows[i].Specie = newName
			}
		}
	}

	renameAll(meta.Species, map[string]string{old: newName})
	meta.TotalVariable = newName
	meta.TotalVariableGuessed = false
	return nil
}

// RenameFactors renames factor labels across every cached table and the
// metadata. Factors absent from mapper keep their name.
func (r *Run) RenameFactors(mapper map[string]string) error {
	meta, err := r.Metadata()
	if err != nil {
		return err
	}

	for _, table := range []*domain.ProfileTable{r.profilesB, r.profilesC} {
		if table != nil {
			renameAll(table.Factors, mapper)
		}
	}
	for _, table := range []*domain.ContributionTable{r.contribB, r.contribC} {
		if table != nil {
			renameAll(table.Factors, mapper)
		}
	}
	for _, table := range []*domain.BootstrapReplicateTable{r.bootB, r.bootC} {
		if table != nil {
			renameAll(table.Factors, mapper)
		}
	}
	for _, table := range []*domain.SwapCountTable{r.swapB, r.swapC} {
		if table != nil {
			renameAll(table.Factors, mapper)
		}
	}
	for _, table := range []*domain.UncertaintySummaryTable{r.uncB, r.uncC} {
		if table == nil {
			continue
		}
		for i := range table.Rows {
			if to, ok := mapper[table.Rows[i].Factor]; ok {
				table.Rows[i].Factor = to
			}
		}
	}

	renameAll(meta.Factors, mapper)
	return nil
}

// RenameFactorsToCategories collapses factor names onto the shared source
// categories, merging e.g. "Road traffic" and "Traffic exhaust" variants
// under one label.
func (r *Run) RenameFactorsToCategories() error {
	meta, err := r.Metadata()
	if err != nil {
		return err
	}
	mapper := make(map[string]string, len(meta.Factors))
	for _, factor := range meta.Factors {
		mapper[factor] = SourceCategory(factor)
	}
	return r.RenameFactors(mapper)
}

// RecomputeSpecies rebuilds a derived specie from the measured ones in the
// cached profile tables. Only "OC" is known: it sums OC* and the
// carbon-equivalent share of each organic tracer present.
func (r *Run) RecomputeSpecies(specie string) error {
	if specie != "OC" {
		return pmferrors.Structural(r.Site, "cannot recompute specie %q", specie)
	}
	meta, err := r.Metadata()
	if err != nil {
		return err
	}

	for _, table := range []*domain.ProfileTable{r.profilesB, r.profilesC} {
		if table == nil {
			continue
		}
		if err := recomputeOC(r.Site, table); err != nil {
			return err
		}
	}
	if !containsString(meta.Species, specie) {
		meta.Species = append(meta.Species, specie)
	}
	return nil
}

func recomputeOC(site string, table *domain.ProfileTable) error {
	base, ok := table.Row("OC*")
	if !ok {
		return pmferrors.NotFound(site, "specie OC* not present, cannot recompute OC")
	}
	oc := make([]float64, len(base))
	copy(oc, base)
	for specie, equiv := range carbonEquivalence {
		row, ok := table.Row(specie)
		if !ok {
			continue
		}
		for j := range oc {
			oc[j] += row[j] * equiv
		}
	}
	for i, name := range table.Species {
		if name == "OC" {
			table.Values[i] = oc
			return nil
		}
	}
	table.Species = append(table.Species, "OC")
	table.Values = append(table.Values, oc)
	return nil
}

// renameAll rewrites labels in place.
func renameAll(labels []string, mapper map[string]string) {
	for i, label := range labels {
		if to, ok := mapper[label]; ok {
			labels[i] = to
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
