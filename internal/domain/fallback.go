package domain

// FallbackQuestions returns the bundled bilingual question set used when no
// quiz identifier is supplied or the backend yields nothing. It guarantees
// the play URL works with zero backend configuration.
func FallbackQuestions() []Question {
	return []Question{
		{
			ID: 1,
			Prompt: LocalizedText{
				EN: "What is the capital of France?",
				AR: "ما هي عاصمة فرنسا؟",
			},
			Options: LocalizedOptions{
				EN: []string{"Paris", "London", "Berlin", "Madrid"},
				AR: []string{"باريس", "لندن", "برلين", "مدريد"},
			},
			CorrectAnswer: 0,
		},
		{
			ID: 2,
			Prompt: LocalizedText{
				EN: "How many continents are there?",
				AR: "كم عدد القارات؟",
			},
			Options: LocalizedOptions{
				EN: []string{"Five", "Six", "Seven", "Eight"},
				AR: []string{"خمس", "ست", "سبع", "ثمان"},
			},
			CorrectAnswer: 2,
		},
		{
			ID: 3,
			Prompt: LocalizedText{
				EN: "Which planet is known as the Red Planet?",
				AR: "أي كوكب يعرف بالكوكب الأحمر؟",
			},
			Options: LocalizedOptions{
				EN: []string{"Venus", "Mars", "Jupiter", "Saturn"},
				AR: []string{"الزهرة", "المريخ", "المشتري", "زحل"},
			},
			CorrectAnswer: 1,
		},
		{
			ID: 4,
			Prompt: LocalizedText{
				EN: "What is the largest ocean on Earth?",
				AR: "ما هو أكبر محيط على الأرض؟",
			},
			Options: LocalizedOptions{
				EN: []string{"Atlantic", "Indian", "Arctic", "Pacific"},
				AR: []string{"الأطلسي", "الهندي", "المتجمد الشمالي", "الهادئ"},
			},
			CorrectAnswer: 3,
		},
		{
			ID: 5,
			Prompt: LocalizedText{
				EN: "How many minutes are in a full day?",
				AR: "كم دقيقة في اليوم الكامل؟",
			},
			Options: LocalizedOptions{
				EN: []string{"1440", "1200", "1600", "2400"},
				AR: []string{"1440", "1200", "1600", "2400"},
			},
			CorrectAnswer: 0,
		},
	}
}
