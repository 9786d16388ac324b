package dto

// This packages contains DTO (Data Transfer Object) structures
// for providing validated and sanitized values to service layer

type RecordDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ImageDTO points a record key at a local image to upload.
type ImageDTO struct {
	Key      string `json:"key"`
	Path     string `json:"path"`
	Mime     string `json:"mime"`
	Filename string `json:"filename"`
}

type StartRegistrationDTO struct {
	Name             string
	Mode             string
	DurationYears    int64
	Owner            string
	SetReverseRecord bool
	Records          []RecordDTO
	Images           []ImageDTO

	TransferTo      string
	ClearRecords    bool
	SetAddress      bool
	TransferControl bool
}

type RegistrationNameDTO struct {
	Name string
}
