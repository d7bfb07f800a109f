package util

import "errors"

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")
	ErrWrongPassword   = errors.New("原密码不正确")
	ErrBookNotFound    = errors.New("词汇书不存在")
	ErrWordNotFound    = errors.New("单词不存在")
	ErrEmptySession    = errors.New("学习单词数为零的会话不予记录")
	ErrBadSessionCount = errors.New("答对单词数不能超过学习单词数")
	ErrBadMasteryLevel = errors.New("掌握等级超出范围")
)
