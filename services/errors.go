package services

import "errors"

var (
	ErrDeadlineNotFound = errors.New("deadline not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrCommentNotFound  = errors.New("comment not found")

	// ErrInvalidStatusTransition is returned when an operation is attempted
	// against a deadline whose status does not permit it.
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	// ErrNoLinkedReport is returned when acceptance is attempted on a
	// deadline with no uploaded report.
	ErrNoLinkedReport = errors.New("deadline has no linked report")

	ErrUnknownPeriodicity = errors.New("unknown periodicity")
	ErrEmptyFile          = errors.New("file is missing or empty")
)
