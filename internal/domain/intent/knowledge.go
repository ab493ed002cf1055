package intent

import "github.com/derslik/derslik/internal/domain/model"

// defaultKeywords is the Turkish keyword -> intent table. Scanned in
// order; the first hit wins.
func defaultKeywords() []keywordEntry {
	return []keywordEntry{
		{"merhaba", "greeting"},
		{"selam", "greeting"},
		{"günaydın", "greeting"},
		{"nasılsın", "status_check"},
		{"anladın mı", "comprehension_check"},
		{"tekrar et", "request_repeat"},
		{"aferin", "praise"},
		{"harika", "praise"},
		{"yanlış", "correction"},
		{"dinle", "attention_command"},
		{"soru", "question"},
		{"otur", "command_sit"},
		{"yerine", "command_sit"},
		{"kalk", "command_stand"},
		{"ayağa", "command_stand"},
		{"sessiz", "discipline"},
		{"sus", "discipline"},
	}
}

// responseTemplates maps an intent to its canned behaviors. These are the
// static fallback tier when no reasoning provider produces a suggestion.
var responseTemplates = map[string][]model.Suggestion{
	"greeting": {
		{ReplyText: "Merhaba öğretmenim!", Animation: "happy_wave", Emotion: "happy"},
		{ReplyText: "Günaydın öğretmenim, derse hazırım.", Animation: "neutral_stand", Emotion: "neutral"},
	},
	"status_check": {
		{ReplyText: "Gayet iyiyim öğretmenim.", Animation: "happy_nod", Emotion: "happy"},
		{ReplyText: "Biraz uykum var ama dinliyorum.", Animation: "sleepy_yawn", Emotion: "sleepy"},
	},
	"comprehension_check": {
		{ReplyText: "Evet, anladım öğretmenim.", Animation: "happy_nod", Emotion: "happy"},
		{ReplyText: "Şu kısmı pek anlamadım...", Animation: "confused_scratch_head", Emotion: "confused"},
	},
	"praise": {
		{ReplyText: "Teşekkür ederim!", Animation: "excited_raise_hand", Emotion: "happy"},
		{ReplyText: "Daha çok çalışacağım.", Animation: "happy_nod", Emotion: "motivated"},
	},
	"warn": {
		{ReplyText: "Özür dilerim, dikkat ediyorum.", Animation: "listening_pose", Emotion: "neutral"},
	},
	"discipline": {
		{ReplyText: "Özür dilerim, hemen toparlanıyorum.", Animation: "neutral_stand", Emotion: "regretful"},
		{ReplyText: "Tamam, dinliyorum.", Animation: "listening_pose", Emotion: "neutral"},
	},
	"encourage": {
		{ReplyText: "Deneyeceğim öğretmenim!", Animation: "excited_raise_hand", Emotion: "motivated"},
	},
	"command_sit": {
		{ReplyText: "Oturuyorum öğretmenim.", Animation: "sit", Emotion: "neutral"},
	},
	"command_stand": {
		{ReplyText: "Kalkıyorum öğretmenim.", Animation: "stand", Emotion: "neutral"},
	},
	IntentUnknown: {
		{ReplyText: "Hımmm... Tam emin olamadım.", Animation: "thinking_pose", Emotion: "neutral"},
		{ReplyText: "Bunu tekrar edebilir misiniz?", Animation: "confused_look", Emotion: "confused"},
	},
}

// Responses returns the canned behaviors for an intent, falling back to
// the unknown templates.
func Responses(intent string) []model.Suggestion {
	if rs, ok := responseTemplates[intent]; ok {
		return rs
	}
	return responseTemplates[IntentUnknown]
}

// Topics returns every keyword currently in the knowledge base, used as
// topic context for reasoning providers.
func Topics() []string {
	ks := defaultKeywords()
	out := make([]string, 0, len(ks))
	for _, e := range ks {
		out = append(out, e.keyword)
	}
	return out
}
