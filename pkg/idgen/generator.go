package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique ids used to correlate one search across logs,
// traces and the printed result.
type Generator interface {
	GenerateID() int64
}

type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator expects a nodeID in 0-1023, unique per running process
// that shares a log sink.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{
		node: node,
	}, nil
}

// GenerateID is safe for concurrent use; snowflake.Node locks internally.
func (g *SnowflakeGenerator) GenerateID() int64 {
	return g.node.Generate().Int64()
}
