package ctgov

import (
	"strings"

	"trialintel/domain/trial"
)

const studyURLPrefix = "https://clinicaltrials.gov/study/"

// Extract flattens a registry study into the pipeline's sourced record.
// List fields are semicolon-joined; countries are deduplicated preserving
// first-seen order.
func Extract(s Study) trial.Sourced {
	p := s.ProtocolSection

	var interventionNames, interventionTypes []string
	for _, iv := range p.Arms.Interventions {
		if iv.Name != "" {
			interventionNames = append(interventionNames, iv.Name)
		}
		if iv.Type != "" {
			interventionTypes = append(interventionTypes, iv.Type)
		}
	}

	var collaborators []string
	for _, a := range p.Sponsor.Collaborators {
		if a.Name != "" {
			collaborators = append(collaborators, a.Name)
		}
	}

	var meshTerms []string
	for _, m := range s.DerivedSection.ConditionBrowse.Meshes {
		if m.Term != "" {
			meshTerms = append(meshTerms, m.Term)
		}
	}

	seenCountry := map[string]bool{}
	var countries []string
	for _, loc := range p.Contacts.Locations {
		c := strings.TrimSpace(loc.Country)
		if c == "" || seenCountry[c] {
			continue
		}
		seenCountry[c] = true
		countries = append(countries, c)
	}

	rec := trial.Record{
		NCTID:         p.Identification.NCTID,
		BriefTitle:    p.Identification.BriefTitle,
		OverallStatus: p.Status.OverallStatus,
		WhyStopped:    p.Status.WhyStopped,

		MeshTerms: strings.Join(meshTerms, "; "),
		Countries: strings.Join(countries, "; "),

		StudyType:         p.Design.StudyType,
		Phases:            strings.Join(p.Design.Phases, ";"),
		LeadSponsor:       p.Sponsor.LeadSponsor.Name,
		Collaborators:     strings.Join(collaborators, "; "),
		Conditions:        strings.Join(p.Conditions.Conditions, "; "),
		InterventionNames: strings.Join(interventionNames, "; "),
		InterventionTypes: strings.Join(interventionTypes, "; "),

		StartDate:             p.Status.StartDateStruct.Date,
		PrimaryCompletionDate: p.Status.PrimaryCompletionDate.Date,
		CompletionDate:        p.Status.CompletionDateStruct.Date,
		LastUpdatePostDate:    p.Status.LastUpdatePostDate.Date,
	}
	if rec.NCTID != "" {
		rec.URL = studyURLPrefix + rec.NCTID
	}

	return trial.Sourced{
		Record:              rec,
		BriefSummary:        p.Description.BriefSummary,
		DetailedDescription: p.Description.DetailedDescription,
	}
}
