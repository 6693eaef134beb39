package types

// DashboardStats 仪表盘统计.
type DashboardStats struct {
	TotalGoats     int              `json:"totalGoats"`
	AvailableGoats int              `json:"availableGoats"`
	TotalVideos    int              `json:"totalVideos"`
	TotalLikes     int64            `json:"totalLikes"`
	TotalMessages  int              `json:"totalMessages"`
	Breeds         []StatsBreedItem `json:"breeds"`
	Images         StatsMediaUsage  `json:"images"`
	Videos         StatsMediaUsage  `json:"videos"`
}

// StatsBreedItem 按品种聚合.
type StatsBreedItem struct {
	Breed string `json:"breed"`
	Count int    `json:"count"`
}

// StatsMediaUsage 媒体文件占用.
type StatsMediaUsage struct {
	Files int   `json:"files"`
	Size  int64 `json:"size"`
}
