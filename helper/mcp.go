package helper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetArgs extracts argument map from a CallToolRequest.
func GetArgs(req mcp.CallToolRequest) map[string]any {
	if req.Params.Arguments == nil {
		return nil
	}
	switch v := req.Params.Arguments.(type) {
	case map[string]interface{}:
		return v
	default:
		return nil
	}
}

// lookupArg 查找参数，支持顶层和嵌套的args结构
func lookupArg(args map[string]any, key string) (any, bool) {
	if args == nil {
		return nil, false
	}
	if val, ok := args[key]; ok && val != nil {
		return val, true
	}
	if nestedArgs, ok := args["args"].(map[string]interface{}); ok && nestedArgs != nil {
		if val, ok := nestedArgs[key]; ok && val != nil {
			return val, true
		}
	}
	return nil, false
}

// GetStringFromRequest 从请求中获取非空字符串参数
func GetStringFromRequest(req mcp.CallToolRequest, key string, def string) (string, bool) {
	if val, ok := GetStringDefault(GetArgs(req), key); ok && val != "" {
		return val, true
	}
	return def, false
}

// GetTextFromRequest 从请求中获取文本参数，空字符串也视为已提供
func GetTextFromRequest(req mcp.CallToolRequest, key string) (string, bool) {
	return GetStringDefault(GetArgs(req), key)
}

// GetIntFromRequest 从请求中获取整数参数
func GetIntFromRequest(req mcp.CallToolRequest, key string, def int) (int, bool) {
	return GetIntDefault(GetArgs(req), key, def)
}

// GetIntSliceFromRequest 从请求中获取整数数组参数，如 view_range
func GetIntSliceFromRequest(req mcp.CallToolRequest, key string) ([]int, bool) {
	return GetIntSliceDefault(GetArgs(req), key)
}

// GetStringDefault returns string value from args and whether it was present.
func GetStringDefault(args map[string]any, key string) (string, bool) {
	val, ok := lookupArg(args, key)
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// GetIntDefault returns int value from args with default.
func GetIntDefault(args map[string]any, key string, def int) (int, bool) {
	val, ok := lookupArg(args, key)
	if !ok {
		return def, false
	}
	if iv, ok := toInt(val); ok {
		return iv, true
	}
	return def, false
}

// GetIntSliceDefault 解析整数数组参数，也接受 "1,5" 或 "[1, 5]" 形式的字符串
func GetIntSliceDefault(args map[string]any, key string) ([]int, bool) {
	val, ok := lookupArg(args, key)
	if !ok {
		return nil, false
	}
	var items []any
	switch v := val.(type) {
	case []any:
		items = v
	case []int:
		return v, true
	case string:
		trimmed := strings.Trim(strings.TrimSpace(v), "[]")
		if trimmed == "" {
			return nil, false
		}
		for _, part := range strings.Split(trimmed, ",") {
			items = append(items, strings.TrimSpace(part))
		}
	default:
		return nil, false
	}
	result := make([]int, 0, len(items))
	for _, item := range items {
		iv, ok := toInt(item)
		if !ok {
			return nil, false
		}
		result = append(result, iv)
	}
	return result, true
}

func toInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		iv, err := v.Int64()
		return int(iv), err == nil
	case string:
		iv, err := strconv.Atoi(strings.TrimSpace(v))
		return iv, err == nil
	}
	return 0, false
}

// ToJSON pretty prints any value as JSON string.
func ToJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// NewToolCallRequest 构造一个工具调用请求
func NewToolCallRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Request: mcp.Request{
			Method: string(mcp.MethodToolsCall),
		},
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}
