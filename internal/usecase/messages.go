package usecase

import "github.com/marketplace-hub/shopping-assistant/pkg/local"

// User-facing text. The storefront serves an international audience, so every
// canned message carries a French translation next to the English default.
var (
	msgGeneralFallback = local.NewSet(
		"I'm your shopping assistant! I can find products, compare prices between our store and eBay, and point you to the best deals. What are you looking for?",
		local.NewTrans(
			local.Fra,
			"Je suis votre assistant shopping ! Je peux trouver des produits, comparer les prix entre notre boutique et eBay, et vous indiquer les meilleures offres. Que cherchez-vous ?",
		),
	)
	msgClarifyFollowUp = local.NewSet(
		"I'm not sure I caught that. Here are the products we were just looking at — could you rephrase your question?",
		local.NewTrans(
			local.Fra,
			"Je ne suis pas sûr d'avoir compris. Voici les produits que nous venons de consulter — pouvez-vous reformuler votre question ?",
		),
	)
	msgTroubleAnalyzing = local.NewSet(
		"I had trouble analyzing these results, but here is everything I found.",
		local.NewTrans(
			local.Fra,
			"J'ai eu du mal à analyser ces résultats, mais voici tout ce que j'ai trouvé.",
		),
	)
	msgNoCandidates = local.NewSet(
		"I couldn't find any products for \"%s\". Try different keywords or another category.",
		local.NewTrans(
			local.Fra,
			"Je n'ai trouvé aucun produit pour « %s ». Essayez d'autres mots-clés ou une autre catégorie.",
		),
	)
	msgNoRelevant = local.NewSet(
		"None of the products I found really match \"%s\". Try different keywords or another category.",
		local.NewTrans(
			local.Fra,
			"Aucun des produits trouvés ne correspond vraiment à « %s ». Essayez d'autres mots-clés ou une autre catégorie.",
		),
	)
	msgFoundProducts = local.NewSet(
		"I found %d products matching your search, sorted by price.",
		local.NewTrans(local.Fra, "J'ai trouvé %d produits correspondant à votre recherche, triés par prix."),
	)
	msgCheapestReason = local.NewSet(
		"Lowest price in this selection",
		local.NewTrans(local.Fra, "Prix le plus bas de cette sélection"),
	)
	msgInternalCheaper = local.NewSet(
		"Our catalog is %d%% cheaper on average",
		local.NewTrans(local.Fra, "Notre catalogue est en moyenne %d%% moins cher"),
	)
	msgEbayCheaper = local.NewSet(
		"eBay is %d%% cheaper on average, but check shipping costs",
		local.NewTrans(local.Fra, "eBay est en moyenne %d%% moins cher, mais vérifiez les frais de port"),
	)
	msgSimilarPrices = local.NewSet(
		"Prices are similar — choose based on shipping and trust",
		local.NewTrans(local.Fra, "Les prix sont similaires — choisissez selon la livraison et la confiance"),
	)
	msgFollowUpCheapest = local.NewSet(
		"Of the %d products we just looked at, %s is the cheapest at %.2f.",
		local.NewTrans(
			local.Fra,
			"Parmi les %d produits que nous venons de voir, %s est le moins cher à %.2f.",
		),
	)
	msgRuleGreeting = local.NewSet(
		"Hey there! I'm your shopping assistant. I can help you find products, compare prices between our store and eBay, and discover the best deals. What are you looking for today?",
		local.NewTrans(
			local.Fra,
			"Bonjour ! Je suis votre assistant shopping. Je peux vous aider à trouver des produits, comparer les prix entre notre boutique et eBay, et dénicher les meilleures offres. Que cherchez-vous aujourd'hui ?",
		),
	)
	msgRuleHelp = local.NewSet(
		"Here's what I can do: find products by category or keywords, compare prices between our store and eBay, and spot budget-friendly or premium options. Just tell me what you're looking for!",
		local.NewTrans(
			local.Fra,
			"Voici ce que je sais faire : trouver des produits par catégorie ou mots-clés, comparer les prix entre notre boutique et eBay, et repérer les options économiques ou haut de gamme. Dites-moi ce que vous cherchez !",
		),
	)
	msgRuleThanks = local.NewSet(
		"You're welcome! Happy to help. Let me know if you need anything else.",
		local.NewTrans(local.Fra, "Avec plaisir ! N'hésitez pas si vous avez besoin d'autre chose."),
	)
	msgRuleBye = local.NewSet(
		"See you later! Come back anytime you need help finding great deals.",
		local.NewTrans(local.Fra, "À bientôt ! Revenez quand vous voulez pour trouver de bonnes affaires."),
	)
)
