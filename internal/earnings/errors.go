package earnings

import "errors"

var (
	// ErrIncompleteForm 表示缺少必填项（工作、日期、开始时间、结束时间）
	ErrIncompleteForm = errors.New("请填写所有字段")
	// ErrInvalidNumeric 表示时薪、周末补贴或休息规则中存在非法数值
	ErrInvalidNumeric = errors.New("数值不合法")
	// ErrMalformedTime 表示时间不是 HH:mm 格式
	ErrMalformedTime = errors.New("时间格式错误")
	// ErrMalformedDate 表示日期不是 YYYY-MM-DD 格式
	ErrMalformedDate = errors.New("日期格式错误")
)
