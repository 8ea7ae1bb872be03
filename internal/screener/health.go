package screener

import "context"

// HealthStatus is the service's root endpoint reply.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health probes the root endpoint of the service.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status *HealthStatus
	if err := c.getJSON(ctx, c.BaseURL+"/", &status); err != nil {
		return nil, err
	}

	return status, nil
}
