package ports

import (
	"climatelab/domain/table"
)

// FrameReader loads one tabular export into a frame
type FrameReader interface {
	Read() (*table.Frame, error)
}
