package utils

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator hands out time-ordered unique int64 ids.
type IDGenerator struct {
	node *snowflake.Node
}

// NewIDGenerator creates a generator for the given node id (0-1023).
func NewIDGenerator(nodeID int64) (*IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &IDGenerator{node: node}, nil
}

// Next returns a new id.
func (g *IDGenerator) Next() int64 {
	return g.node.Generate().Int64()
}
