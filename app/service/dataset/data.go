package dataset

// Record is one row of campaign metrics. The schema is fixed.
type Record struct {
	CampaignID        string  `json:"campaign_id"`
	InfluencedRevenue float64 `json:"influenced_revenue"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	Channel           string  `json:"channel"`
	RunDate           string  `json:"run_date"`
}

// Field returns the value of a schema field by its column name.
// Names outside the schema report false.
func (r Record) Field(name string) (any, bool) {
	switch name {
	case "campaign_id":
		return r.CampaignID, true
	case "influenced_revenue":
		return r.InfluencedRevenue, true
	case "impressions":
		return r.Impressions, true
	case "clicks":
		return r.Clicks, true
	case "channel":
		return r.Channel, true
	case "run_date":
		return r.RunDate, true
	}

	return nil, false
}

// SampleRecords returns the built-in campaign dataset. Generated queries are
// never executed against a real database, they are evaluated against these
// rows instead.
func SampleRecords() []Record {
	return []Record{
		{
			CampaignID:        "CAMP_A",
			InfluencedRevenue: 150000,
			Impressions:       100000,
			Clicks:            2500,
			Channel:           "WhatsApp",
			RunDate:           "2025-07-05",
		},
		{
			CampaignID:        "CAMP_B",
			InfluencedRevenue: 200000,
			Impressions:       80000,
			Clicks:            4000,
			Channel:           "Email",
			RunDate:           "2025-07-10",
		},
		{
			CampaignID:        "CAMP_C",
			InfluencedRevenue: 175000,
			Impressions:       120000,
			Clicks:            3600,
			Channel:           "SMS",
			RunDate:           "2025-07-15",
		},
		{
			CampaignID:        "CAMP_D",
			InfluencedRevenue: 90000,
			Impressions:       60000,
			Clicks:            1200,
			Channel:           "Push Notification",
			RunDate:           "2025-07-20",
		},
	}
}
