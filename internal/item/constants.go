package item

import "fmt"

// Cache keys for catalog reads
const ItemsListCacheKey = "items_list"

func itemCacheKey(id int) string {
	return fmt.Sprintf("item_%d", id)
}
