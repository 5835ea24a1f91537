package testutil

// Fixture ids shared by tests.
const (
	SiteBranchA = "site-a"
	SiteHubB    = "site-b"
	SiteBranchC = "site-c"

	LabelLTE       = "label-lte"
	LabelBroadband = "label-bb"

	WANBranchLTE       = "wan-a-lte"
	WANBranchBroadband = "wan-a-bb"
	WANHubLTE          = "wan-b-lte"
	WANBranchCLTE      = "wan-c-lte"
)

// FixtureLabels returns the label catalog.
func FixtureLabels() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": LabelLTE, "name": "Cellular", "label": "public-5", "description": "LTE circuits"},
		{"id": LabelBroadband, "name": "Broadband", "label": "public-1", "description": "Cable and DSL"},
	}
}

// FixtureSites returns two branches and one hub, in controller order.
func FixtureSites() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": SiteBranchA, "name": "Branch A", "element_cluster_role": "SPOKE"},
		{"id": SiteHubB, "name": "Hub B", "element_cluster_role": "HUB"},
		{"id": SiteBranchC, "name": "Branch C", "element_cluster_role": "SPOKE"},
	}
}

// FixtureInterfaces returns WAN interfaces keyed by site id.
func FixtureInterfaces() map[string][]map[string]interface{} {
	return map[string][]map[string]interface{}{
		SiteBranchA: {
			{
				"id": WANBranchLTE, "name": "LTE-Backup", "label_id": LabelLTE, "cost": 500,
				"type": "publicwan", "link_bw_down": 25.0, "link_bw_up": 5.0,
				"bwc_enabled": true, "tags": []interface{}{"cellular"}, "_etag": 3,
			},
			{
				"id": WANBranchBroadband, "name": "Comcast Business", "label_id": LabelBroadband, "cost": 10,
				"type": "publicwan",
			},
		},
		SiteHubB: {
			{"id": WANHubLTE, "name": "LTE-Primary", "label_id": LabelLTE, "cost": 100},
		},
		SiteBranchC: {
			{"id": WANBranchCLTE, "name": "Verizon lte", "label_id": LabelLTE, "cost": 250},
		},
	}
}
