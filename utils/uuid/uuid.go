package uuid

import (
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

func getNode() *snowflake.Node {
	once.Do(func() {
		n, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		node = n
	})
	return node
}

// GenUUID16 生成16位十六进制请求id
func GenUUID16() string {
	id := getNode().Generate().Int64()
	return strconv.FormatInt(id, 16)
}
