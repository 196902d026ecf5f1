package pmf

// sourceCategories maps the factor names found across PMF runs onto a
// shared set of source categories, so that differently labelled factors
// from different sites can be compared.
var sourceCategories = map[string]string{
	"Vehicular":                    "Traffic",
	"VEH":                          "Traffic",
	"VEH ind":                      "Traffic_ind",
	"Traffic_exhaust":              "Traffic_exhaust",
	"Traffic_non-exhaust":          "Traffic_non-exhaust",
	"VEH dir":                      "Traffic_dir",
	"Oil/Vehicular":                "Traffic",
	"Oil":                          "Oil",
	"Vanadium rich":                "Vanadium rich",
	"Road traffic/oil combustion":  "Traffic",
	"Traffic":                      "Road traffic",
	"Traffic 1":                    "Traffic 1",
	"Traffic 2":                    "Traffic 2",
	"Primary traffic":              "Road traffic",
	"Road traffic":                 "Road traffic",
	"Road trafic":                  "Road traffic",
	"Road traffic/dust":            "Traffic/dust (Mix)",
	"Bio. burning":                 "Biomass_burning",
	"Bio burning":                  "Biomass_burning",
	"Comb fossile/biomasse":        "Biomass_burning",
	"BB":                           "Biomass_burning",
	"Biomass_burning":              "Biomass_burning",
	"Biomass Burning":              "Biomass_burning",
	"Biomass burning":              "Biomass_burning",
	"BB1":                          "Biomass_burning1",
	"BB2":                          "Biomass_burning2",
	"Sulfate-rich":                 "Sulfate_rich",
	"Sulphate-rich":                "Sulfate_rich",
	"Nitrate-rich":                 "Nitrate_rich",
	"Sulfate rich":                 "Sulfate_rich",
	"Sulfate_rich":                 "Sulfate_rich",
	"Nitrate rich":                 "Nitrate_rich",
	"Nitrate_rich":                 "Nitrate_rich",
	"Secondary inorganics":         "Secondary_inorganics",
	"Secondaire":                   "MSA_rich",
	"Secondary bio":                "MSA_rich",
	"Secondary biogenic":           "MSA_rich",
	"Secondary organic":            "MSA_rich",
	"Secondary oxidation":          "Secondary_oxidation",
	"Secondary biogenic oxidation": "Secondary_biogenic_oxidation",
	"Secondaire organique":         "MSA_rich",
	"Marine SOA":                   "MSA_rich",
	"MSA_rich":                     "MSA_rich",
	"MSA-rich":                     "MSA-rich",
	"MSA rich":                     "MSA_rich",
	"Secondary biogenic/sulfate":   "SOA/sulfate (Mix)",
	"Marine SOA/SO4":               "SOA/sulfate (Mix)",
	"Marine/HFO":                   "Marine/HFO",
	"Marine biogenic/HFO":          "Marine/HFO",
	"Secondary biogenic/HFO":       "Marine/HFO",
	"Marine bio/HFO":               "Marine/HFO",
	"Marin bio/HFO":                "Marine/HFO",
	"Sulfate rich/HFO":             "Marine/HFO",
	"Marine secondary":             "MSA_rich",
	"Marin secondaire":             "MSA_rich",
	"HFO":                          "HFO",
	"HFO (stainless)":              "HFO",
	"Marin":                        "MSA_rich",
	"Sea/road salt":                "Sea-road salt",
	"Sea-road salt":                "Sea-road salt",
	"sea-road salt":                "Sea-road salt",
	"Road salt":                    "Salt",
	"Sea salt":                     "Salt",
	"Seasalt":                      "Salt",
	"Salt":                         "Salt",
	"Fresh seasalt":                "Salt",
	"Sels de mer":                  "Salt",
	"Aged_salt":                    "Aged_salt",
	"Aged sea salt":                "Aged_salt",
	"Aged seasalt":                 "Aged_salt",
	"Aged salt":                    "Aged_salt",
	"Primary_biogenic":             "Primary_biogenic",
	"Primary bio":                  "Primary_biogenic",
	"Primary biogenic":             "Primary_biogenic",
	"Biogénique primaire":          "Primary_biogenic",
	"Biogenique":                   "Primary_biogenic",
	"Biogenic":                     "Primary_biogenic",
	"Mineral dust":                 "Dust",
	"Resuspended_dust":             "Resuspended_dust",
	"Resuspended dust":             "Resuspended_dust",
	"Dust":                         "Dust",
	"Crustal dust":                 "Dust",
	"Dust (mineral)":               "Dust",
	"Dust/biogénique marin":        "Dust",
	"AOS/dust":                     "Dust",
	"Industrial":                   "Industrial",
	"Industry":                     "Industrial",
	"Industrie":                    "Industrial",
	"Industries":                   "Industrial",
	"Industry/vehicular":           "Industry/traffic",
	"Industry/traffic":             "Industry/traffic",
	"Industries/trafic":            "Industry/traffic",
	"Cadmium rich":                 "Cadmium rich",
	"Fioul lourd":                  "HFO",
	"Débris végétaux":              "Plant_debris",
	"Chlorure":                     "Chloride",
	"PM other":                     "Other",
	"Undetermined":                 "Undetermined",
}

// sourceColors assigns each source category a display color so plots of
// the same source look alike across sites.
var sourceColors = map[string]string{
	"Traffic":                      "#000000",
	"Traffic 1":                    "#000000",
	"Traffic 2":                    "#102262",
	"Road traffic":                 "#000000",
	"Primary traffic":              "#000000",
	"Traffic_ind":                  "#000000",
	"Traffic_exhaust":              "#000000",
	"Traffic_dir":                  "#444444",
	"Traffic_non-exhaust":          "#444444",
	"Resuspended_dust":             "#444444",
	"Oil/Vehicular":                "#000000",
	"Road traffic/oil combustion":  "#000000",
	"Biomass_burning":              "#92d050",
	"Biomass burning":              "#92d050",
	"Biomass_burning1":             "#92d050",
	"Biomass_burning2":             "#92d050",
	"Sulphate-rich":                "#ff2a2a",
	"Sulphate_rich":                "#ff2a2a",
	"Sulfate-rich":                 "#ff2a2a",
	"Sulfate_rich":                 "#ff2a2a",
	"Sulfate rich":                 "#ff2a2a",
	"Nitrate-rich":                 "#217ecb",
	"Nitrate_rich":                 "#217ecb",
	"Nitrate rich":                 "#217ecb",
	"Secondary_inorganics":         "#0000cc",
	"MSA_rich":                     "#ff7f2a",
	"MSA-rich":                     "#ff7f2a",
	"Secondary_oxidation":          "#ff87dc",
	"Secondary_biogenic_oxidation": "#ff87dc",
	"Secondary oxidation":          "#ff87dc",
	"Secondary biogenic oxidation": "#ff87dc",
	"Marine SOA":                   "#ff7f2a",
	"Biogenic SOA":                 "#8c564b",
	"Anthropogenic SOA":            "#8c564b",
	"Marine/HFO":                   "#a37f15",
	"Aged seasalt/HFO":             "#8c564b",
	"Marine_biogenic":              "#fc564b",
	"HFO":                          "#70564b",
	"HFO (stainless)":              "#70564b",
	"Oil":                          "#70564b",
	"Vanadium rich":                "#70564b",
	"Cadmium rich":                 "#70564b",
	"Marine":                       "#33b0f6",
	"Marin":                        "#33b0f6",
	"Salt":                         "#00b0f0",
	"Seasalt":                      "#00b0f0",
	"Sea-road salt":                "#209ecc",
	"Sea/road salt":                "#209ecc",
	"Fresh sea salt":               "#00b0f0",
	"Fresh seasalt":                "#00b0f0",
	"Aged_salt":                    "#97bdff",
	"Aged seasalt":                 "#97bdff",
	"Aged sea salt":                "#97bdff",
	"Fungal spores":                "#ffc000",
	"Primary_biogenic":             "#ffc000",
	"Primary biogenic":             "#ffc000",
	"Biogenique":                   "#ffc000",
	"Biogenic":                     "#ffc000",
	"Dust":                         "#dac6a2",
	"Mineral dust":                 "#dac6a2",
	"Crustal_dust":                 "#dac6a2",
	"Industrial":                   "#7030a0",
	"Industries":                   "#7030a0",
	"Indus/veh":                    "#5c304b",
	"Industry/traffic":             "#5c304b",
	"Plant debris":                 "#2aff80",
	"Plant_debris":                 "#2aff80",
	"Débris végétaux":              "#2aff80",
	"Chloride":                     "#80e5ff",
	"PM other":                     "#cccccc",
	"Traffic/dust (Mix)":           "#333333",
	"SOA/sulfate (Mix)":            "#6c362b",
	"Sulfate rich/HFO":             "#8c56b4",
	"Other":                        "#cccccc",
	"Undetermined":                 "#666666",
}

// SourceCategory returns the shared category for a factor name. Unknown
// names map to themselves.
func SourceCategory(factor string) string {
	if category, ok := sourceCategories[factor]; ok {
		return category
	}
	return factor
}

// SourceColor returns the display color for a source or category, falling
// back to gray for unknown names.
func SourceColor(source string) string {
	if color, ok := sourceColors[source]; ok {
		return color
	}
	return "#666666"
}

// SourceColors returns a copy of the full color palette.
func SourceColors() map[string]string {
	out := make(map[string]string, len(sourceColors))
	for k, v := range sourceColors {
		out[k] = v
	}
	return out
}
