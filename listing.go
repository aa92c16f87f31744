package medroster

import (
	"net/url"
	"strconv"
)

// ListingCountryIDs maps countries to the country_id query value the
// directory search uses.
var ListingCountryIDs = map[string]int{
	"Bangladesh": 18,
	"India":      103,
}

// ListingURL builds the doctor search URL for a directory. A countryID of 0
// searches all countries. Pages start at 1.
func ListingURL(base string, countryID, page int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "invalid listing base URL %q", base)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "listing base URL must be absolute: %q", base)
	}
	if page < 1 {
		page = 1
	}

	u.Path = "/search"
	q := url.Values{}
	q.Set("type", "doctor")
	if countryID > 0 {
		q.Set("country_id", strconv.Itoa(countryID))
	}
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}
