package model

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// IntSlice JSON 数组列，存储难度等级集合
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *IntSlice) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
	return json.Unmarshal(bytes, s)
}

// Contains 判断是否包含指定值
func (s IntSlice) Contains(v int) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Intersects 判断两个集合是否有交集
func (s IntSlice) Intersects(other IntSlice) bool {
	for _, v := range other {
		if s.Contains(v) {
			return true
		}
	}
	return false
}
