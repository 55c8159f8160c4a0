package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrProjectNotFound    = errors.New("项目不存在")
	ErrProjectExist       = errors.New("项目已存在")
	ErrRepoNotFound       = errors.New("GitHub 仓库不存在")
	ErrCommentNotFound    = errors.New("评论不存在")
	ErrTagNotFound        = errors.New("标签不存在")
	ErrTechnologyNotFound = errors.New("技术栈不存在")
	ErrActionDuplicate    = errors.New("重复操作")
	ErrEmailFrequency     = errors.New("无效的邮件频率")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUserNotFound:       NotFound,
	ErrProjectNotFound:    NotFound,
	ErrProjectExist:       BadRequest,
	ErrRepoNotFound:       NotFound,
	ErrCommentNotFound:    NotFound,
	ErrTagNotFound:        NotFound,
	ErrTechnologyNotFound: NotFound,
	ErrActionDuplicate:    BadRequest,
	ErrEmailFrequency:     BadRequest,
	UnauthorizedError:     Unauthorized,
	UnExpectedError:       InternalServerError,
}
