package converter

// ItemInfoRedisModel — кэшированная карточка позиции для выдачи поиска.
type ItemInfoRedisModel struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price *int64 `json:"price"`
}
