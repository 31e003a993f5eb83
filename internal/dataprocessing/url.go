package dataprocessing

import "fmt"

// campaignURLTemplate is the reports overview page for a campaign.
const campaignURLTemplate = "https://www.klaviyo.com/campaign/%s/reports/overview"

// CampaignURL builds the reference URL for a campaign identifier. The id is
// interpolated verbatim; no format validation is applied.
func CampaignURL(id string) string {
	return fmt.Sprintf(campaignURLTemplate, id)
}
