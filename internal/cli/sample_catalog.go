package cli

import "quizwhiz-service/internal/domain"

// sampleCatalog provides a small question bank keyed the way the real content
// is: (examType, subject, topic) triples. Used as the loader when Postgres is
// not configured, and by the seed command.
func sampleCatalog() []domain.Question {
	abcd := func(a, b, c, d string) []domain.Option {
		return []domain.Option{
			{ID: "a", Text: a},
			{ID: "b", Text: b},
			{ID: "c", Text: c},
			{ID: "d", Text: d},
		}
	}

	return []domain.Question{
		// TYT / math / basic-concepts
		{
			ID: "q1_tyt_math_basic-concepts", ExamType: "tyt", Subject: "math", Topic: "basic-concepts",
			Text:    "Which of the following is a prime number?",
			Options: abcd("51", "57", "61", "63"), CorrectAnswerID: "c",
		},
		{
			ID: "q2_tyt_math_basic-concepts", ExamType: "tyt", Subject: "math", Topic: "basic-concepts",
			Text:    "What is the greatest common divisor of 36 and 48?",
			Options: abcd("6", "9", "12", "18"), CorrectAnswerID: "c",
		},
		{
			ID: "q3_tyt_math_basic-concepts", ExamType: "tyt", Subject: "math", Topic: "basic-concepts",
			Text:    "A three-digit number has digit sum 9 and its digits are consecutive. What is the number if its digits are in increasing order?",
			Options: abcd("123", "234", "345", "456"), CorrectAnswerID: "b",
		},
		{
			ID: "q4_tyt_math_basic-concepts", ExamType: "tyt", Subject: "math", Topic: "basic-concepts",
			Text:    "How many positive divisors does 72 have?",
			Options: abcd("8", "10", "12", "16"), CorrectAnswerID: "c",
		},
		{
			ID: "q5_tyt_math_basic-concepts", ExamType: "tyt", Subject: "math", Topic: "basic-concepts",
			Text:    "What is the remainder when 2024 is divided by 9?",
			Options: abcd("6", "7", "8", "0"), CorrectAnswerID: "c",
		},
		// TYT / math / equations
		{
			ID: "q1_tyt_math_equations", ExamType: "tyt", Subject: "math", Topic: "equations",
			Text:    "If 3x - 7 = 2x + 5, what is x?",
			Options: abcd("10", "11", "12", "13"), CorrectAnswerID: "c",
		},
		{
			ID: "q2_tyt_math_equations", ExamType: "tyt", Subject: "math", Topic: "equations",
			Text:    "The sum of two numbers is 30 and their difference is 6. What is the larger number?",
			Options: abcd("15", "16", "18", "21"), CorrectAnswerID: "c",
		},
		{
			ID: "q3_tyt_math_equations", ExamType: "tyt", Subject: "math", Topic: "equations",
			Text:    "For which value of k does the equation 2x + k = 4x - 6 have the solution x = 5?",
			Options: abcd("2", "4", "6", "8"), CorrectAnswerID: "b",
		},
		// TYT / geography / climate
		{
			ID: "q1_tyt_geography_climate", ExamType: "tyt", Subject: "geography", Topic: "climate",
			Text:    "Which climate type dominates the Black Sea coast of Turkey?",
			Options: abcd("Continental", "Mediterranean", "Oceanic (humid temperate)", "Steppe"), CorrectAnswerID: "c",
		},
		{
			ID: "q2_tyt_geography_climate", ExamType: "tyt", Subject: "geography", Topic: "climate",
			Text:    "Which factor most directly explains why Ankara has colder winters than Izmir?",
			Options: abcd("Longitude", "Distance from the sea and altitude", "Vegetation cover", "Soil type"), CorrectAnswerID: "b",
		},
		{
			ID: "q3_tyt_geography_climate", ExamType: "tyt", Subject: "geography", Topic: "climate",
			Text:    "Maquis vegetation is characteristic of which climate?",
			Options: abcd("Mediterranean", "Oceanic", "Continental", "Polar"), CorrectAnswerID: "a",
		},
		// TYT / history / ottoman-foundation
		{
			ID: "q1_tyt_history_ottoman-foundation", ExamType: "tyt", Subject: "history", Topic: "ottoman-foundation",
			Text:    "In which year was the Ottoman Beylik founded?",
			Options: abcd("1243", "1299", "1326", "1453"), CorrectAnswerID: "b",
		},
		{
			ID: "q2_tyt_history_ottoman-foundation", ExamType: "tyt", Subject: "history", Topic: "ottoman-foundation",
			Text:    "Which city became the first Ottoman capital after its conquest in 1326?",
			Options: abcd("Edirne", "Bursa", "Iznik", "Istanbul"), CorrectAnswerID: "b",
		},
		{
			ID: "q3_tyt_history_ottoman-foundation", ExamType: "tyt", Subject: "history", Topic: "ottoman-foundation",
			Text:    "The Battle of Bapheus (1302) was fought between the early Ottomans and which state?",
			Options: abcd("Byzantine Empire", "Seljuk Sultanate", "Ilkhanate", "Kingdom of Hungary"), CorrectAnswerID: "a",
		},
	}
}
