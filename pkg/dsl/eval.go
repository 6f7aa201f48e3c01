// Package dsl 基于 CEL (Common Expression Language) 提供布尔表达式程序。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：category == "escort" / source != "reddit"
//   - 逻辑：category == "club" && nsfw
//   - 包含："ticketmaster" in [source] / source.contains("eventbrite")
//
// 与在每次求值时重新编译不同，Program 在创建时编译一次并复用，
// 适合规则表这类"少量表达式、海量求值"的场景。
package dsl

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Program 是一条编译好的布尔 CEL 表达式，线程安全，可并发求值。
type Program struct {
	expr string
	prg  cel.Program
}

// NewProgram 编译表达式。vars 声明表达式可见的变量名（均为 Dyn 类型）。
func NewProgram(expr string, vars ...string) (*Program, error) {
	opts := make([]cel.EnvOption, 0, len(vars))
	for _, v := range vars {
		opts = append(opts, cel.Variable(v, cel.DynType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本（用于日志与错误提示）。
func (p *Program) Expr() string { return p.expr }

// Eval 执行表达式，返回布尔结果。
// 表达式结果不是布尔时报错；访问未提供的变量由 CEL 报错，
// 调用方应为所有声明过的变量提供值（可为零值）。
func (p *Program) Eval(input map[string]any) (bool, error) {
	out, _, err := p.prg.Eval(input)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: expression must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}
