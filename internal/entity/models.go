package entity

// service + repo input model
type TenderMetaInput struct {
	Name   *string // optional: new display name
	Status *string // optional: new workflow status
}

// controller model
type TenderOutputModel struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	LastModified string `json:"lastModified"`
}

// controller model carrying the full data tree
type TenderDetailsOutputModel struct {
	Id           string     `json:"id"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	LastModified string     `json:"lastModified"`
	TenderData   TenderData `json:"tenderData"`
}
