package pagination

import "strconv"

// Page 表示有序结果集中的一页及其导航元数据，页码从 1 开始。
type Page[T any] struct {
	Items       []T
	Number      int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

// Paginate 将有序切片按固定页大小切分并返回请求的那一页。
// requestedPage 缺失、非数字或越界时收敛到最近的合法页码，不会因用户输入报错；
// pageSize 非正数属于调用方的编程错误，直接 panic。
func Paginate[T any](items []T, pageSize int, requestedPage string) Page[T] {
	if pageSize <= 0 {
		panic("pagination: page size must be positive")
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		// 空集合视为仅有一页的空页
		totalPages = 1
	}

	number, err := strconv.Atoi(requestedPage)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      number,
		TotalPages:  totalPages,
		HasPrevious: number > 1,
		HasNext:     number < totalPages,
	}
}
