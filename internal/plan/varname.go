package plan

import "fmt"

// varName derives a collision-free generated identifier from an operator's
// arena-assigned id.
func varName(prefix string, opID int) string {
	return fmt.Sprintf("%s%d", prefix, opID)
}
