package requests

import (
	"github.com/lidofinance/ensreg/client/api/dto"
)

type StartRegistrationForm struct {
	Name             string          `json:"name" validate:"attr=name,min=3"`
	Mode             string          `json:"mode"`
	DurationYears    int64           `json:"duration_years"`
	Owner            string          `json:"owner"`
	SetReverseRecord bool            `json:"set_reverse_record"`
	Records          []dto.RecordDTO `json:"records"`
	Images           []dto.ImageDTO  `json:"images"`

	TransferTo      string `json:"transfer_to"`
	ClearRecords    bool   `json:"clear_records"`
	SetAddress      bool   `json:"set_address"`
	TransferControl bool   `json:"transfer_control"`
}

type RegistrationNameForm struct {
	Name string `param:"name" json:"name" validate:"attr=name,min=3"`
}
