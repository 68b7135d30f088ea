package services

import "github.com/tallara/ozquiz/internal/models"

// questCatalog is the static pool daily quests are drawn from. Three
// definitions are assigned per user per day, picked uniformly without
// replacement.
var questCatalog = []models.QuestDefinition{
	{Title: "Daily Learner", Description: "Complete 3 practice quizzes", Type: models.QuestTypeQuizCount, Requirement: 3, XPReward: 50},
	{Title: "Quick Study", Description: "Complete 1 practice quiz", Type: models.QuestTypeQuizCount, Requirement: 1, XPReward: 20},
	{Title: "Perfectionist", Description: "Score 100% on a quiz", Type: models.QuestTypePerfectScore, Requirement: 1, XPReward: 75},
	{Title: "Flawless Run", Description: "Score 100% on 2 quizzes", Type: models.QuestTypePerfectScore, Requirement: 2, XPReward: 120},
	{Title: "XP Hunter", Description: "Earn 150 XP today", Type: models.QuestTypeXPEarned, Requirement: 150, XPReward: 60},
	{Title: "XP Machine", Description: "Earn 300 XP today", Type: models.QuestTypeXPEarned, Requirement: 300, XPReward: 100},
	{Title: "People Person", Description: "Complete 2 quizzes about Australia and its people", Type: models.QuestTypeTopicQuiz, Topic: "Australia and its people", Requirement: 2, XPReward: 70},
	{Title: "Law Abider", Description: "Complete 2 quizzes about government and the law", Type: models.QuestTypeTopicQuiz, Topic: "Government and the law", Requirement: 2, XPReward: 70},
	{Title: "True Blue", Description: "Complete 2 quizzes about Australian values", Type: models.QuestTypeTopicQuiz, Topic: "Australian values", Requirement: 2, XPReward: 70},
}

// achievementCatalog is the static achievement list. Names are the
// identity the evaluator unlocks by.
var achievementCatalog = []models.Achievement{
	{Name: "First Step", Description: "Complete your first quiz", XPReward: 10},
	{Name: "Perfect Score", Description: "Answer every question in a quiz correctly", XPReward: 25},
	{Name: "On Fire", Description: "Reach a 3 day streak", XPReward: 30},
	{Name: "Week Warrior", Description: "Reach a 7 day streak", XPReward: 70},
	{Name: "Socialite", Description: "Make your first friend", XPReward: 20},
	{Name: "Gladiator", Description: "Win a quiz battle", XPReward: 50},
	{Name: "Koala King", Description: "Reach level 10", XPReward: 100, Secret: true},
	{Name: "Mock Master", Description: "Pass a full mock test", XPReward: 50},
	{Name: "Scholar", Description: "Complete a study topic", XPReward: 40},
}
