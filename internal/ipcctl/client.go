package ipcctl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/penrose/internal/runtimepath"
)

// Client talks to a running Server over its Unix socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient builds a Client bound to the default runtime socket path.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		socketPath = ""
	}
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}
}

// NewClientAt builds a Client bound to an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}
}

func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("ipcctl: connect to manager: %w (is penrose running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("ipcctl: marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("ipcctl: send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("ipcctl: read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("ipcctl: parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("manager: %s", resp.Error)
	}
	return &resp, nil
}

// GetStatus retrieves the manager's current status.
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}
	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("ipcctl: parse status data: %w", err)
	}
	return &status, nil
}

// ListWorkspaces retrieves every visible and hidden workspace.
func (c *Client) ListWorkspaces() (*WorkspacesData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWorkspaces})
	if err != nil {
		return nil, err
	}
	var data WorkspacesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("ipcctl: parse workspaces data: %w", err)
	}
	return &data, nil
}

// FocusTag switches the manager's active screen to tag.
func (c *Client) FocusTag(tag string) error {
	payload, err := json.Marshal(FocusTagPayload{Tag: tag})
	if err != nil {
		return fmt.Errorf("ipcctl: marshal focus_tag payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandFocusTag, Payload: payload})
	return err
}

// FocusClient moves input focus to a specific client by X window ID.
func (c *Client) FocusClient(clientID uint32) error {
	payload, err := json.Marshal(FocusClientPayload{ClientID: clientID})
	if err != nil {
		return fmt.Errorf("ipcctl: marshal focus_client payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandFocusClient, Payload: payload})
	return err
}

// MoveClientToTag moves a specific client to tag without changing focus.
func (c *Client) MoveClientToTag(clientID uint32, tag string) error {
	payload, err := json.Marshal(MoveClientToTagPayload{ClientID: clientID, Tag: tag})
	if err != nil {
		return fmt.Errorf("ipcctl: marshal move_client_to_tag payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandMoveClientToTag, Payload: payload})
	return err
}

// NextLayout cycles the focused workspace's layout.
func (c *Client) NextLayout() error {
	_, err := c.sendRequest(&Request{Command: CommandNextLayout})
	return err
}

// SendLayoutMessage delivers a named layout message to the focused workspace.
func (c *Client) SendLayoutMessage(message string) error {
	payload, err := json.Marshal(SendLayoutMessagePayload{Message: message})
	if err != nil {
		return fmt.Errorf("ipcctl: marshal send_layout_message payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandSendLayoutMessage, Payload: payload})
	return err
}

// Ping checks whether a manager is listening on the socket.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
