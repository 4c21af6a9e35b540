// bookstore-cli 书店命令行客户端
//
// 浏览目录、管理图书,并维护一个保存在本地文件中的购物车,结算时同步到服务端会话购物车。
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := execute(os.Stdout, os.Args[1:]); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		}
		os.Exit(1)
	}
}
