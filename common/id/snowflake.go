package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Node IDs per process. Two processes sharing a node ID can mint colliding
// user and message IDs, so every binary claims its own.
const (
	NodeServer int64 = 1
	NodeWorker int64 = 2
	NodeCLI    int64 = 3
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node. Only the first call has an effect.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered int64 ID. Init must have been called.
func New() int64 {
	return node.Generate().Int64()
}

// Parse reads a decimal ID as sent by clients in JSON string fields.
func Parse(s string) (int64, error) {
	v, err := snowflake.ParseString(s)
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}
