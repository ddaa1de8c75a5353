package data

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	ViewModeTable string = "table"
	ViewModeList  string = "list"
)

type EmployeeSearch struct {
	Query    string `json:"query,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	ViewMode string `json:"view_mode,omitempty"`
}

func (e *EmployeeSearch) ToParams() url.Values {
	params := make(url.Values)
	if e.Query != "" {
		params.Set(ParameterQuery, e.Query)
	}
	if e.Page > 0 {
		params.Set(ParameterPage, strconv.Itoa(e.Page))
	}
	if e.PageSize > 0 {
		params.Set(ParameterPageSize, strconv.Itoa(e.PageSize))
	}
	if e.ViewMode != "" {
		params.Set(ParameterViewMode, e.ViewMode)
	}
	return params
}

func (e *EmployeeSearch) FromParams(params url.Values) {
	for key, value := range params {
		if len(value) <= 0 {
			continue
		}
		switch strings.ToLower(key) {
		case ParameterQuery:
			e.Query = value[0]
		case ParameterPage:
			e.Page, _ = strconv.Atoi(value[0])
		case ParameterPageSize:
			e.PageSize, _ = strconv.Atoi(value[0])
		case ParameterViewMode:
			e.ViewMode = strings.ToLower(value[0])
		}
	}
}

// EmployeePage is a single page of search results; PageNumbers is the
// window of page numbers a pager should render around Page
type EmployeePage struct {
	Employees   []*Employee `json:"employees"`
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	Total       int         `json:"total"`
	PageNumbers []int       `json:"page_numbers"`
}
