package reconcile

// BuildSearchCriteria renders the expected certificate search criteria for
// a management identity. Only `=` and `\` are percent-encoded, matching the
// literal form the device agent expects; the identity itself is inserted
// verbatim.
func BuildSearchCriteria(entDMID string) string {
	return "Subject=CN%3d" + entDMID + "&Stores=MY%5CSystem"
}

// BuildReference renders the expected certificate reference for a
// thumbprint. The thumbprint is inserted verbatim, case preserved as read.
func BuildReference(thumbprint string) string {
	return "MY;System;" + thumbprint
}
