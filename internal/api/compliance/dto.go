package compliance

// UpdateRequest is a partial checklist update; absent fields keep their value.
type UpdateRequest struct {
	GSTRegistered        *bool    `json:"gst_registered"`
	GSTNumber            *string  `json:"gst_number" binding:"omitempty,max=15"`
	MaterialDisclosure   *bool    `json:"material_disclosure"`
	MaterialsList        []string `json:"materials_list"`
	HSCode               *string  `json:"hs_code" binding:"omitempty,max=10"`
	ArtisanCertificate   *bool    `json:"artisan_certificate"`
	EcoFriendlyPackaging *bool    `json:"eco_friendly_packaging"`
	PackagingDetails     *string  `json:"packaging_details"`
	TargetMarkets        []string `json:"target_markets"`
	AdditionalNotes      *string  `json:"additional_notes"`

	RemoveQualityCertificate bool `json:"remove_quality_certificate"`
	RemoveExportLicense      bool `json:"remove_export_license"`
}
