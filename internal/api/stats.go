package api

const (
	userStatsPath       = "/api/auth/user-stats"
	astrologerStatsPath = "/api/astrologer/astrologer-stats"
)

// UserTotal returns the registered user count.
func (c *Client) UserTotal() (int64, error) {
	return c.total(userStatsPath)
}

// AstrologerTotal returns the registered astrologer count.
func (c *Client) AstrologerTotal() (int64, error) {
	return c.total(astrologerStatsPath)
}

func (c *Client) total(path string) (int64, error) {
	data, status, err := c.get(path)
	if err != nil {
		return 0, err
	}
	return decodeTotal(status, data)
}
