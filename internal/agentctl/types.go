package agentctl

// GetStatusInput is the input for the get_status tool. It takes no
// arguments; the struct exists so the tool still has a typed schema.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	WMName        string `json:"wm_name"`
	CurrentTag    string `json:"current_tag"`
	FocusedClient uint32 `json:"focused_client,omitempty"`
	HasFocus      bool   `json:"has_focus"`
	ScreenCount   int    `json:"screen_count"`
	ClientCount   int    `json:"client_count"`
}

// FocusClientInput is the input for the focus_client tool.
type FocusClientInput struct {
	ClientID uint32 `json:"client_id" jsonschema:"required,X window ID of the client to focus"`
}

// FocusClientOutput is the output for the focus_client tool.
type FocusClientOutput struct {
	Focused bool `json:"focused"`
}

// MoveClientToTagInput is the input for the move_client_to_tag tool.
type MoveClientToTagInput struct {
	ClientID uint32 `json:"client_id" jsonschema:"required,X window ID of the client to move"`
	Tag      string `json:"tag" jsonschema:"required,Destination workspace tag"`
}

// MoveClientToTagOutput is the output for the move_client_to_tag tool.
type MoveClientToTagOutput struct {
	Moved bool `json:"moved"`
}

// NextLayoutInput is the input for the next_layout tool. It takes no
// arguments; the struct exists so the tool still has a typed schema.
type NextLayoutInput struct{}

// NextLayoutOutput is the output for the next_layout tool.
type NextLayoutOutput struct {
	Advanced bool `json:"advanced"`
}
