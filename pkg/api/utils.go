package api

import (
	"context"
	"net/url"
)

// UtilsService exposes the utility endpoints.
type UtilsService struct {
	client *Client
}

// NewUtilsService creates the utils facade.
func NewUtilsService(c *Client) *UtilsService {
	return &UtilsService{client: c}
}

// LookupPincode resolves a postal code to its city and state, used to
// auto-fill address forms. No authentication required.
func (s *UtilsService) LookupPincode(ctx context.Context, pincode string) Result[PincodeInfo] {
	if pincode == "" {
		return Failure[PincodeInfo](&ErrorPayload{
			Fields: map[string][]string{"pincode": {"This field is required."}},
		})
	}
	var out PincodeInfo
	if err := s.client.Get(ctx, "users/pincode/"+url.PathEscape(pincode)+"/", &out); err != nil {
		return Failure[PincodeInfo](errorPayload(err, "Pincode lookup failed"))
	}
	return Success(out)
}
