package backend

import "context"

// RegisterUserRequest registers an externally authenticated identity with
// the backend. Idempotent server-side; called on every sign-in.
type RegisterUserRequest struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
	Username  string `json:"username"`
}

// RegisterUserResponse is the backend's acknowledgement
type RegisterUserResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

// RegisterUser registers a user with the backend
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegisterUserResponse, error) {
	var resp RegisterUserResponse
	if err := c.doRequest(ctx, "add_user", "POST", "/add_user", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type userSummaryResponse struct {
	UserID  string `json:"user_id"`
	Summary string `json:"summary"`
}

// UserSummary fetches the personalized taste summary for a user
func (c *Client) UserSummary(ctx context.Context, userID string) (string, error) {
	var resp userSummaryResponse
	if err := c.doRequest(ctx, "user_summary", "GET", "/user_summary/"+userID, nil, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}
