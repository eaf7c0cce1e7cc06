package taxonomy

import (
	"sort"
	"strings"

	"trialintel/domain/classify"
)

// Area pairs a disease-area name with the keyword stems that map into it.
// Stems are matched as plain substrings of the normalized condition/MeSH text.
type Area struct {
	Name     string
	Keywords []string
}

// DefaultTaxonomy is the keyword taxonomy used to tag trials with disease
// areas. Order matters only for readability; scoring ties break by name.
func DefaultTaxonomy() []Area {
	return []Area{
		{"Oncology", []string{
			"cancer", "oncology", "neoplasm", "tumor", "tumour", "malign", "carcinoma", "sarcoma", "lymphoma", "leukemia",
			"myeloma", "metast", "melanoma", "glioma",
		}},
		{"Cardiovascular", []string{
			"cardio", "heart", "myocard", "coronary", "atrial", "ventric", "hypertension", "ischemi",
			"thromb", "embol", "heart failure", "arrhythm", "angina",
		}},
		{"Neurology", []string{
			"alzheimer", "parkinson", "multiple sclerosis", "epilep", "seizure", "migraine", "neuro", "dementia",
			"amyotrophic", "als", "neuropath",
		}},
		{"Infectious Disease", []string{
			"infection", "infectious", "virus", "viral", "bacterial", "fungal", "hiv", "aids", "hepatitis", "influenza",
			"covid", "sars", "tuberc", "malaria", "pneumonia", "sepsis",
		}},
		{"Immunology & Autoimmune", []string{
			"autoimmune", "lupus", "rheumatoid", "arthritis", "psoriasis", "crohn", "ulcerative colitis", "ibd",
			"inflamm", "immun", "ankylosing", "vasculitis",
		}},
		{"Endocrine & Metabolic", []string{
			"diabetes", "obesity", "metabolic", "thyroid", "insulin", "dyslip", "cholesterol",
			"hyperlip", "metabolic syndrome",
		}},
		{"Psychiatry & Mental Health", []string{
			"depress", "bipolar", "schiz", "anxiety", "ptsd", "autism", "adhd", "mental", "psychiatr", "substance use",
			"addiction",
		}},
		{"Respiratory", []string{
			"asthma", "copd", "pulmonary", "lung", "respiratory", "bronch", "pneumon", "fibrosis",
		}},
		{"Gastroenterology & Hepatology", []string{
			"gastro", "hepatic", "hepat", "liver", "cirrhos", "pancrea", "colitis", "crohn", "ulcer", "intestinal",
			"bowel", "nash", "nafld",
		}},
		{"Renal & Urology", []string{
			"renal", "kidney", "nephro", "urology", "bladder", "prostate", "urinary",
		}},
		{"Dermatology", []string{
			"dermat", "skin", "eczema", "atopic", "psoriasis", "acne",
		}},
		{"Ophthalmology", []string{
			"ocular", "eye", "retina", "macular", "glaucoma", "ophthalm",
		}},
		{"Hematology (non-onc)", []string{
			"hemoph", "sickle", "thalassem", "anemia", "anaemia", "hematolog", "haematolog",
		}},
		{"Musculoskeletal", []string{
			"osteo", "bone", "fracture", "muscle", "tendon", "ligament", "orthopedic", "orthopaedic",
		}},
	}
}

// Assign tags a trial with a primary disease area plus the sorted list of all
// matched areas (semicolon-joined). Primary is the area with the most keyword
// hits, ties broken by area name. Unmatched input maps to ("Other", "").
func Assign(areas []Area, conditions, meshTerms []string) (primary, matched string) {
	text := classify.NormalizeText(strings.Join(append(append([]string{}, conditions...), meshTerms...), " ; "))
	if text == "" {
		return "Other", ""
	}

	type hit struct {
		name  string
		score int
	}
	var hits []hit
	for _, area := range areas {
		score := 0
		for _, kw := range area.Keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, hit{area.Name, score})
		}
	}
	if len(hits) == 0 {
		return "Other", ""
	}

	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.name
	}
	sort.Strings(names)

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].name < hits[j].name
	})
	return hits[0].name, strings.Join(names, "; ")
}
