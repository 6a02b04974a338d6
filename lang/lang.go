package lang

import (
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sjzsdu/uiforge/config"
	"golang.org/x/text/language"
)

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	once      sync.Once
)

func setup() {
	bundle = i18n.NewBundle(language.English)
	for tag, messages := range catalog {
		for id, text := range messages {
			_ = bundle.AddMessages(tag, &i18n.Message{ID: id, Other: text})
		}
	}
	localizer = i18n.NewLocalizer(bundle, config.Get(config.KeyLang))
}

// T 翻译消息，找不到翻译时返回原文
func T(id string) string {
	once.Do(setup)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      id,
		DefaultMessage: &i18n.Message{ID: id, Other: id},
	})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// SetLanguage 切换当前语言，主要用于测试
func SetLanguage(lang string) {
	once.Do(setup)
	localizer = i18n.NewLocalizer(bundle, lang)
}
