package dom

import "errors"

var (
	ErrInvalidNode      = errors.New("node does not belong to the document")
	ErrHierarchyRequest = errors.New("node cannot be inserted at this position")
	ErrNotFound         = errors.New("reference node is not a child of the parent")
	ErrIndexSize        = errors.New("offset is larger than the node length")
)
