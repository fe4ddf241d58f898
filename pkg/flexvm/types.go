package flexvm

import "encoding/json"

// WireParameter is a single {id, value} pair in the API's parameter list.
type WireParameter struct {
	ID    int         `json:"id"    yaml:"id"`
	Value interface{} `json:"value" yaml:"value"`
}

// WirePayload is a translated product selection.
type WirePayload struct {
	ProductTypeID int             `json:"productTypeId" yaml:"productTypeId"`
	Parameters    []WireParameter `json:"parameters"    yaml:"parameters"`
}

// ProductSelection maps product names to their named parameters. Exactly one
// product may carry a non-nil parameter map.
type ProductSelection map[string]map[string]interface{}

// Response is a decoded API response body.
type Response map[string]interface{}

// Status returns the application status code, or 0 when absent.
func (r Response) Status() int {
	switch v := r["status"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}

		return int(n)
	default:
		return 0
	}
}

// Message returns the application message, if any.
func (r Response) Message() string {
	msg, _ := r["message"].(string)

	return msg
}

// Items returns the list stored under key. A single object is returned as a
// one-element list.
func (r Response) Items(key string) []map[string]interface{} {
	switch v := r[key].(type) {
	case []interface{}:
		items := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				items = append(items, m)
			}
		}

		return items
	case []map[string]interface{}:
		return v
	case map[string]interface{}:
		return []map[string]interface{}{v}
	default:
		return nil
	}
}

// ConfigCreateRequest creates a configuration in a program.
type ConfigCreateRequest struct {
	ProgramSerialNumber string
	Name                string
	AccountID           *int
	Products            ProductSelection
	// SkipValidation forwards parameters without range/choice checks.
	SkipValidation bool
}

// ConfigListRequest lists the configurations of a program.
type ConfigListRequest struct {
	ProgramSerialNumber string `json:"programSerialNumber"`
	AccountID           *int   `json:"accountId,omitempty"`
}

// ConfigUpdateRequest updates a configuration. Products may be nil to only
// rename it.
type ConfigUpdateRequest struct {
	ID             int
	Name           string
	Products       ProductSelection
	SkipValidation bool
}

// EntitlementVMCreateRequest creates VM entitlements.
type EntitlementVMCreateRequest struct {
	ConfigID    int    `json:"configId"`
	Count       int    `json:"count"`
	Description string `json:"description"`
	EndDate     string `json:"endDate,omitempty"`
	FolderPath  string `json:"folderPath,omitempty"`
	SkipPending *bool  `json:"skipPending,omitempty"`
}

// EntitlementHardwareCreateRequest creates hardware entitlements.
type EntitlementHardwareCreateRequest struct {
	ConfigID      int      `json:"configId"`
	SerialNumbers []string `json:"serialNumbers"`
	EndDate       string   `json:"endDate,omitempty"`
}

// EntitlementCloudCreateRequest creates a cloud entitlement.
type EntitlementCloudCreateRequest struct {
	ConfigID int    `json:"configId"`
	EndDate  string `json:"endDate,omitempty"`
}

// EntitlementListRequest lists entitlements. Either ConfigID or both
// AccountID and ProgramSerialNumber must be set.
type EntitlementListRequest struct {
	AccountID           *int   `json:"accountId,omitempty"`
	ConfigID            int    `json:"configId,omitempty"`
	Description         string `json:"description,omitempty"`
	ProgramSerialNumber string `json:"programSerialNumber,omitempty"`
	SerialNumber        string `json:"serialNumber,omitempty"`
	Status              string `json:"status,omitempty"`
	TokenStatus         string `json:"tokenStatus,omitempty"`
}

// EntitlementUpdateRequest updates an entitlement. IgnoreErrors returns
// error bodies as responses instead of errors.
type EntitlementUpdateRequest struct {
	SerialNumber string  `json:"serialNumber"`
	ConfigID     int     `json:"configId,omitempty"`
	Description  *string `json:"description,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	IgnoreErrors bool    `json:"-"`
}

// EntitlementPointsRequest queries point usage between two dates.
type EntitlementPointsRequest struct {
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	AccountID           *int   `json:"accountId,omitempty"`
	ConfigID            int    `json:"configId,omitempty"`
	ProgramSerialNumber string `json:"programSerialNumber,omitempty"`
	SerialNumber        string `json:"serialNumber,omitempty"`
}

// GroupListRequest lists asset folders. Without AccountID the legacy FlexVM
// endpoint is used.
type GroupListRequest struct {
	AccountID string `json:"accountId,omitempty"`
}

// GroupNextTokenRequest fetches the next unused token of a folder.
type GroupNextTokenRequest struct {
	AccountID  string   `json:"accountId,omitempty"`
	ConfigID   int      `json:"configId,omitempty"`
	FolderPath string   `json:"folderPath,omitempty"`
	Status     []string `json:"status,omitempty"`
}
