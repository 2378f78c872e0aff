package common

import (
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

var (
	idNode *snowflake.Node
	idOnce sync.Once
)

// UUIDint64 returns a new snowflake int64 id. The node id is taken from
// GOCRM_NODE_ID when set so multiple instances never collide.
func UUIDint64() int64 {
	idOnce.Do(func() {
		nodeID := cast.ToInt64(os.Getenv("GOCRM_NODE_ID"))
		if nodeID <= 0 || nodeID > 1023 {
			nodeID = 1
		}
		var err error
		idNode, err = snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
	})
	return idNode.Generate().Int64()
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
