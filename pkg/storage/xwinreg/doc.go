// Package xwinreg 提供基于 Windows 注册表的配置后端。
//
// 设置项存放为指定子键（默认位于 HKEY_CURRENT_USER）下的字符串值（REG_SZ）。
// 仅在 windows 平台可用，其余平台本包为空。
package xwinreg
