package types

import "time"

// Unicorn 只读分析数据集中的一行，由 seed 命令从 CSV 导入
type Unicorn struct {
	ID        int64     `json:"id" db:"id"`
	Company   string    `json:"company" db:"company"`
	Valuation float64   `json:"valuation" db:"valuation"` // 单位：十亿美元
	Date      time.Time `json:"date" db:"date"`
	Country   string    `json:"country" db:"country"`
	City      *string   `json:"city" db:"city"`
	Industry  string    `json:"industry" db:"industry"`
	Investors string    `json:"investors" db:"investors"`
}

// QueryRows is the verbatim result of an executed retrieval query.
type QueryRows struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}
