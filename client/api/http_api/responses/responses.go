package responses

import (
	"github.com/lidofinance/ensreg/client/types"
)

type BaseResponse struct {
	ErrorMessage string      `json:"error_message,omitempty"`
	Result       interface{} `json:"result"`
}

// ActionResponse reports the step whose action was run.
type ActionResponse struct {
	Name string     `json:"name"`
	Step types.Step `json:"step"`
}

const Abandoned = "abandoned"
