package pmf

import (
	"math"
	"time"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/pkg/contracts/domain"
)

// Derived analytical views. All of them are pure transformations over the
// cached tables; the tables themselves are never modified.

// ToCubicMeter converts factor contributions to concentration units for one
// species: contribution(date, factor) x profile(specie, factor). An empty
// specie defaults to the total variable; nil factors means all factors.
func (r *Run) ToCubicMeter(solution domain.Solution, specie string, factors []string) (*domain.ContributionTable, error) {
	meta, err := r.Metadata()
	if err != nil {
		return nil, err
	}
	if specie == "" {
		specie = meta.TotalVariable
	}
	if factors == nil {
		factors = meta.Factors
	}

	profiles, err := r.Profiles(solution)
	if err != nil {
		return nil, err
	}
	contrib, err := r.Contributions(solution)
	if err != nil {
		return nil, err
	}

	out := &domain.ContributionTable{
		Dates:   append([]time.Time{}, contrib.Dates...),
		Factors: append([]string{}, factors...),
	}
	scale := make([]float64, len(factors))
	cols := make([]int, len(factors))
	for j, f := range factors {
		v, ok := profiles.Value(specie, f)
		if !ok {
			return nil, pmferrors.Structural(r.Site, "specie %q or factor %q not in profiles", specie, f)
		}
		scale[j] = v
		cols[j] = indexOf(contrib.Factors, f)
		if cols[j] < 0 {
			return nil, pmferrors.Structural(r.Site, "factor %q not in contributions", f)
		}
	}
	for _, row := range contrib.Values {
		converted := make([]float64, len(factors))
		for j := range factors {
			converted[j] = row[cols[j]] * scale[j]
		}
		out.Values = append(out.Values, converted)
	}
	return out, nil
}

// ToRelativeMass divides each profile column by its total-variable
// concentration, yielding the relative mass of every species per factor.
// Nil species/factors mean all.
func (r *Run) ToRelativeMass(solution domain.Solution, species, factors []string) (*domain.ProfileTable, error) {
	meta, err := r.Metadata()
	if err != nil {
		return nil, err
	}
	if species == nil {
		species = meta.Species
	}
	if factors == nil {
		factors = meta.Factors
	}

	profiles, err := r.Profiles(solution)
	if err != nil {
		return nil, err
	}
	total, ok := profiles.Row(meta.TotalVariable)
	if !ok {
		return nil, pmferrors.Structural(r.Site, "total variable %q not in profiles", meta.TotalVariable)
	}

	out := &domain.ProfileTable{Factors: append([]string{}, factors...)}
	for _, sp := range species {
		row, ok := profiles.Row(sp)
		if !ok {
			return nil, pmferrors.Structural(r.Site, "specie %q not in profiles", sp)
		}
		values := make([]float64, len(factors))
		for j, f := range factors {
			c := indexOf(profiles.Factors, f)
			if c < 0 {
				return nil, pmferrors.Structural(r.Site, "factor %q not in profiles", f)
			}
			values[j] = row[c] / total[c]
		}
		out.Species = append(out.Species, sp)
		out.Values = append(out.Values, values)
	}
	return out, nil
}

// TotalSpecieSum normalizes each species row of the profile table to
// percent of its own total across factors.
func (r *Run) TotalSpecieSum(solution domain.Solution) (*domain.ProfileTable, error) {
	profiles, err := r.Profiles(solution)
	if err != nil {
		return nil, err
	}
	out := &domain.ProfileTable{
		Species: append([]string{}, profiles.Species...),
		Factors: append([]string{}, profiles.Factors...),
	}
	for _, row := range profiles.Values {
		sum := 0.0
		for _, v := range row {
			if !math.IsNaN(v) {
				sum += v
			}
		}
		values := make([]float64, len(row))
		for j, v := range row {
			values[j] = v / sum * 100
		}
		out.Values = append(out.Values, values)
	}
	return out, nil
}

// SeasonalContribution aggregates one species' contributions by season.
// When normalize is true each season row is scaled to fractions of the
// seasonal total; otherwise rows hold seasonal means. With annual set, an
// "Annual" row (mean across seasons) is appended.
func (r *Run) SeasonalContribution(solution domain.Solution, specie string, annual, normalize bool) (*domain.SeasonalTable, error) {
	converted, err := r.ToCubicMeter(solution, specie, nil)
	if err != nil {
		return nil, err
	}

	nf := len(converted.Factors)
	sums := make(map[string][]float64)
	counts := make(map[string][]int)
	for _, s := range seasonOrder {
		sums[s] = make([]float64, nf)
		counts[s] = make([]int, nf)
	}
	for i, date := range converted.Dates {
		season := seasonOf(date.Month())
		for j, v := range converted.Values[i] {
			if math.IsNaN(v) {
				continue
			}
			sums[season][j] += v
			counts[season][j]++
		}
	}

	table := &domain.SeasonalTable{Factors: append([]string{}, converted.Factors...)}
	for _, season := range seasonOrder {
		row := make([]float64, nf)
		if normalize {
			total := 0.0
			for _, v := range sums[season] {
				total += v
			}
			for j, v := range sums[season] {
				row[j] = v / total
			}
		} else {
			for j, v := range sums[season] {
				row[j] = v / float64(counts[season][j])
			}
		}
		table.Seasons = append(table.Seasons, season)
		table.Values = append(table.Values, row)
	}

	if annual {
		row := make([]float64, nf)
		for j := 0; j < nf; j++ {
			sum, n := 0.0, 0
			for _, seasonRow := range table.Values {
				if !math.IsNaN(seasonRow[j]) {
					sum += seasonRow[j]
					n++
				}
			}
			row[j] = sum / float64(n)
		}
		table.Seasons = append(table.Seasons, "Annual")
		table.Values = append(table.Values, row)
	}
	return table, nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
