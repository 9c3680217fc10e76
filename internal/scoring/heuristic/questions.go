package heuristic

import "github.com/spigell/cv-coach/internal/scoring"

var defaultQuestions = []scoring.Question{
	{
		Question: "Tell me about yourself and your work experience.",
		Hint:     "Focus on skills and experience relevant to the position. Keep the answer to about two minutes.",
	},
	{
		Question: "What are your greatest strengths and weaknesses?",
		Hint:     "When talking about a weakness, mention how you are working on it.",
	},
	{
		Question: "Why do you want to work for our company?",
		Hint:     "Research the company first and name specific things about its culture, products or mission that you admire.",
	},
	{
		Question: "Describe a difficult situation at work and how you resolved it.",
		Hint:     "Use the STAR method: Situation, Task, Action, Result.",
	},
	{
		Question: "Where do you see yourself in five years?",
		Hint:     "Connect your career goals to the position and the growth opportunities at the company.",
	},
}
