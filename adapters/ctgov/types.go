package ctgov

// Wire types for the ClinicalTrials.gov v2 studies endpoint. Only the fields
// the pipeline consumes are declared; unknown JSON is ignored on decode.

type pagedResponse struct {
	Studies       []Study `json:"studies"`
	NextPageToken string  `json:"nextPageToken"`
	TotalCount    int     `json:"totalCount"`
}

// Study is one registry study as returned by the API.
type Study struct {
	ProtocolSection protocolSection `json:"protocolSection"`
	DerivedSection  derivedSection  `json:"derivedSection"`
}

type protocolSection struct {
	Identification identificationModule `json:"identificationModule"`
	Status         statusModule         `json:"statusModule"`
	Sponsor        sponsorModule        `json:"sponsorCollaboratorsModule"`
	Description    descriptionModule    `json:"descriptionModule"`
	Conditions     conditionsModule     `json:"conditionsModule"`
	Design         designModule         `json:"designModule"`
	Arms           armsModule           `json:"armsInterventionsModule"`
	Contacts       contactsModule       `json:"contactsLocationsModule"`
}

type identificationModule struct {
	NCTID      string `json:"nctId"`
	BriefTitle string `json:"briefTitle"`
}

type statusModule struct {
	OverallStatus         string    `json:"overallStatus"`
	WhyStopped            string    `json:"whyStopped"`
	StartDateStruct       dateValue `json:"startDateStruct"`
	PrimaryCompletionDate dateValue `json:"primaryCompletionDateStruct"`
	CompletionDateStruct  dateValue `json:"completionDateStruct"`
	LastUpdatePostDate    dateValue `json:"lastUpdatePostDateStruct"`
}

type dateValue struct {
	Date string `json:"date"`
}

type sponsorModule struct {
	LeadSponsor   agency   `json:"leadSponsor"`
	Collaborators []agency `json:"collaborators"`
}

type agency struct {
	Name string `json:"name"`
}

type descriptionModule struct {
	BriefSummary        string `json:"briefSummary"`
	DetailedDescription string `json:"detailedDescription"`
}

type conditionsModule struct {
	Conditions []string `json:"conditions"`
}

type designModule struct {
	StudyType string   `json:"studyType"`
	Phases    []string `json:"phases"`
}

type armsModule struct {
	Interventions []intervention `json:"interventions"`
}

type intervention struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type contactsModule struct {
	Locations []location `json:"locations"`
}

type location struct {
	Country string `json:"country"`
}

type derivedSection struct {
	ConditionBrowse browseModule `json:"conditionBrowseModule"`
}

type browseModule struct {
	Meshes []meshTerm `json:"meshes"`
}

type meshTerm struct {
	Term string `json:"term"`
}
