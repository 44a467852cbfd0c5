package inventory

import "fmt"

func inventoryCacheKey(userID int) string {
	return fmt.Sprintf("inventory_%d", userID)
}
