package rewriter

import (
	"fmt"
	"regexp"
	"strings"
)

// BrandPhrase is the shop's protected trade name. When present in
// source content it must survive rewriting with this exact casing.
const BrandPhrase = "Le Vapoteur Discount"

// Field display labels, as configured per item type in fields.go.
const (
	FieldShortDescription = "Description courte"
	FieldDescription      = "Description"
	FieldMetaDescription  = "Meta description"
	FieldMetaTitle        = "Meta titre"
	FieldSummary          = "Résumé"
)

// pricePrefixRe matches the leading "Prix : X,XX € |" label some meta
// descriptions carry. The prefix is reattached mechanically after
// rewriting and never goes through the model.
var pricePrefixRe = regexp.MustCompile(`^(Prix\s*:\s*[\d,]+\s*€\s*\|\s*)`)

// ExtractPricePrefix splits a price label off the front of
// meta-description content. For any other field label the content is
// returned untouched.
func ExtractPricePrefix(fieldName, content string) (prefix, rest string) {
	if fieldName != FieldMetaDescription {
		return "", content
	}
	m := pricePrefixRe.FindString(content)
	if m == "" {
		return "", content
	}
	return m, strings.TrimSpace(content[len(m):])
}

// HasBrandPhrase reports whether the protected brand phrase appears in
// the content, in any casing.
func HasBrandPhrase(content string) bool {
	return strings.Contains(strings.ToLower(content), strings.ToLower(BrandPhrase))
}

// targetLength returns the length instruction for a field label. The
// meta-description budget shrinks when a price prefix will be
// reattached on top of the generated text.
func targetLength(fieldName string, hasPricePrefix bool) string {
	switch fieldName {
	case FieldShortDescription:
		return "50-100 mots"
	case FieldDescription:
		return "200-400 mots"
	case FieldMetaDescription:
		if hasPricePrefix {
			return "100-120 caractères"
		}
		return "140-150 caractères"
	case FieldMetaTitle:
		return "50-60 caractères"
	default:
		return "100-200 mots"
	}
}

// BuildPrompt assembles the rewrite instruction for one field. The
// content passed in must already have any price prefix removed.
func BuildPrompt(content, fieldName, itemName, itemType, pricePrefix string) string {
	hasBrand := HasBrandPhrase(content)

	brandInstruction := ""
	if hasBrand {
		brandInstruction = fmt.Sprintf(`
IMPORTANT : Si le texte contient "%s" - CONSERVE EXACTEMENT cette mention avec cette orthographe.`, BrandPhrase)
	}

	priceInstruction := ""
	if pricePrefix != "" {
		priceInstruction = fmt.Sprintf(`
TRÈS IMPORTANT : Le texte commence par "%s" - NE PAS l'inclure dans ta réécriture, je l'ajouterai moi-même.`, pricePrefix)
	}

	return fmt.Sprintf(`Tu es un expert SEO ET un spécialiste de la conformité réglementaire pour les produits de vapotage.

CONTEXTE LÉGAL FIVAPE (Avril 2024) :
- Directive européenne 2014/40/UE et Code de la Santé Publique
- Interdiction TOTALE des termes promotionnels et subjectifs
- Uniquement des informations factuelles et techniques

PRODUIT : %s
TYPE : %s
CHAMP : %s
LONGUEUR CIBLE : %s

CONTENU À RÉÉCRIRE (sans le prix si présent) :
%s

%s
%s

MISSION : Réécrire ce contenu en respectant STRICTEMENT :

1. SUPPRIMER tous les termes de ce type : délicieux, savoureux, gourmand, excellent, parfait, bonheur, plaisir, intense, etc.
2. GARDER uniquement les informations factuelles
3. Si c'est une Meta Description, rester TRÈS concis (%s)
4. Si c'est un Meta titre, être court et percutant (%s)
5. Préserver les informations techniques : compatibilité, résistances, formats

Fournis UNIQUEMENT le texte réécrit, sans le prix, sans commentaires.`,
		itemName, itemType, fieldName,
		targetLength(fieldName, pricePrefix != ""),
		content,
		brandInstruction, priceInstruction,
		targetLength(fieldName, pricePrefix != ""),
		targetLength(fieldName, pricePrefix != ""))
}
