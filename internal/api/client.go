package api

// Client bundles one resource service per backend resource, all sharing a
// single transport (and therefore a single token state and policy set).
type Client struct {
	transport *Transport

	Auth          *AuthService
	Users         *UserService
	Notifications *NotificationService
	Media         *MediaService
	Programs      *ProgramService
	Statistics    *StatisticsService
	Admin         *AdminService
	Editions      *EditionService
}

// NewClient creates a client for the given base URL and token store.
func NewClient(baseURL string, tokens TokenStore, opts TransportOptions) *Client {
	t := NewTransport(baseURL, tokens, opts)
	return &Client{
		transport:     t,
		Auth:          &AuthService{t: t},
		Users:         &UserService{t: t},
		Notifications: &NotificationService{t: t},
		Media:         &MediaService{t: t},
		Programs:      &ProgramService{t: t},
		Statistics:    &StatisticsService{t: t},
		Admin:         &AdminService{t: t},
		Editions:      &EditionService{t: t},
	}
}

// Transport exposes the underlying transport (token accessors, base URL).
func (c *Client) Transport() *Transport {
	return c.transport
}
