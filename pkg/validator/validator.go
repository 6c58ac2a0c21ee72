package validator

import (
	"strings"
	"sync"

	"signalflow/pkg/logger"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	zhtranslations "github.com/go-playground/validator/v10/translations/zh"
)

var (
	once  sync.Once
	trans ut.Translator
)

// LazyInitGinValidator 替换gin默认validator的错误翻译器
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*val.Validate)
		if !ok {
			logger.Warnf("gin validator engine unexpected type, translation disabled")
			return
		}
		zhT := zh.New()
		enT := en.New()
		uni := ut.New(enT, zhT, enT)

		var found bool
		trans, found = uni.GetTranslator(language)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}

		var err error
		switch language {
		case "zh":
			err = zhtranslations.RegisterDefaultTranslations(v, trans)
		default:
			err = entranslations.RegisterDefaultTranslations(v, trans)
		}
		if err != nil {
			logger.Warnf("register validator translations failed: %v", err)
		}
	})
}

// Translate 把校验错误翻译成一条可读消息
func Translate(err error) string {
	if err == nil {
		return ""
	}
	errs, ok := err.(val.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Translate(trans))
	}
	return strings.Join(msgs, "; ")
}
