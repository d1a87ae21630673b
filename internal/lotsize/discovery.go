package lotsize

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"breezerelay/internal/logger"
)

// contractFileRe matches the daily F&O contract archive names on the
// derivatives reports page, e.g. NSE_FO_contract_15022026.csv.gz.
var contractFileRe = regexp.MustCompile(`NSE_FO_contract_\d{8}\.csv\.gz`)

// discoverer locates the current contract archive URL. An operator
// override short-circuits the listing scan entirely; that is the escape
// hatch for when the publisher changes the page layout.
type discoverer struct {
	override    string
	reportsURL  string
	archiveBase string
	web         *publisherClient
}

func (d *discoverer) LatestURL(ctx context.Context) (string, error) {
	if d.override != "" {
		return d.override, nil
	}

	d.web.prime(ctx)

	status, body, err := d.web.get(ctx, d.reportsURL, listingTimeout)
	if err != nil {
		return "", &DiscoveryError{Reason: "listing page unreachable", Err: err}
	}
	if status < 200 || status > 299 {
		return "", &DiscoveryError{Reason: fmt.Sprintf("listing page returned status %d", status)}
	}

	names := contractFileRe.FindAllString(string(body), -1)
	if len(names) == 0 {
		return "", &DiscoveryError{Reason: "no contract file links on listing page"}
	}

	// The embedded date is ddmmyyyy, so lexicographic order is not
	// chronological across month boundaries.
	sort.Strings(names)
	latest := names[len(names)-1]

	logger.L().Debug().
		Str("file", latest).
		Int("links", len(names)).
		Msg("contract file selected")
	return d.archiveBase + "/" + latest, nil
}
