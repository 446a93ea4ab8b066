package layout

// EmptyDocumentError indicates layout was asked to run on input with no
// content. It is returned before any page is allocated.
type EmptyDocumentError struct{}

func (e *EmptyDocumentError) Error() string {
	return "layout error: document is empty"
}
